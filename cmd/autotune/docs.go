package main

// General API documentation for swaggo. Run `swag init` to generate docs.
//
// @title           autotune monitoring API
// @version         1.0
// @description     Run status and checkpoint inspection for serving-config search runs.
//
// @contact.name   autotune maintainers
// @contact.url    https://github.com/your-org/autotune
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
