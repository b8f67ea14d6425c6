package main

import (
	"fmt"
	"os"

	"github.com/openclaw/clawkeeper/internal/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clawkeeper:", err)
		os.Exit(utils.ExitCodeFor(err))
	}
}
