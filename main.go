package main

import "i18n-analyzer/internal/cli"

func main() {
	cli.Execute()
}
