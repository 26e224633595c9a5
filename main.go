package main

import "tender-adjudication-api/app"

func main() {
	app.Run()
}
