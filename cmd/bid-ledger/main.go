package main

import "bid-ledger-api/app"

func main() {
	app.Run()
}
