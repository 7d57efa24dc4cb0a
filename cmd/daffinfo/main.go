// Command daffinfo inspects directional audio (DAFF) files through the
// daffbind access layer.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand(newApp()).Execute(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("Command failed")
		os.Exit(1)
	}
}
