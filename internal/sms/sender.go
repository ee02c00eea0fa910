package sms

// Sender — отправка проверочного кода на номер телефона.
// Обе реализации (Mobizon, Twilio) сводят ответ провайдера к одной паре
// (messageID, error): любая форма без явного успеха — это ошибка доставки,
// текст провайдера остаётся в err как есть.
type Sender interface {
	Send(to, code string) (messageID string, err error)
}
