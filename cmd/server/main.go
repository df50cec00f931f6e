package main

import "nusaauth/internal/app"

// @title           NUSA Auth API
// @version         1.0
// @description     Сервис регистрации с OTP-подтверждением, входа и восстановления пароля.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
