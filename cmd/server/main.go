package main

import "ispark/internal/app"

// @title           iSPARK Mobile API
// @version         1.0
// @description     REST API мобильного приложения iSPARK: регистрация по номеру телефона, заявки, новости, push-уведомления.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	app.Run()
}
