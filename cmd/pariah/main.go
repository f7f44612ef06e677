// Command pariah sends requests to JSON REST APIs from the command line.
//
//	pariah --base-url https://api.base-api.io/v1/ -H "Authorization: Bearer $TOKEN" \
//	    get /users/:id :id=42
package main

import (
	"os"

	"github.com/ThalesGroup/pariah/cmd/pariah/app"
)

func main() {
	if err := app.NewPariahCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
