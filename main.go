/*
Copyright © 2026 Castkeep
*/
package main

import "github.com/castkeep/publisher-api/cmd"

func main() {
	cmd.Execute()
}
