package push

import "context"

// Sender — мультикаст-рассылка push-уведомлений на токены одного пользователя.
type Sender interface {
	SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, err error)
}
