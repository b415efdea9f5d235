// @title           Expense Tracker API
// @version         1.0
// @description     Expense tickets submitted by employees and reviewed by employers.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "expense_tracker/internal/app"

func main() {
	app.Run()
}
