package main

import (
	"github.com/iu3qez/IU3QEZ-Keyer/cmd"
	"github.com/iu3qez/IU3QEZ-Keyer/internal/recovery"
)

func main() {
	defer recovery.HandlePanic()
	cmd.Execute()
}
