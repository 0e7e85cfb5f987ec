// Command asvctl drives an asimplevectors server from the shell.
package main

import (
	"os"

	"github.com/billionvectors/asimplevectors-go/cmd/asvctl/app"
)

func main() {
	os.Exit(app.Execute())
}
