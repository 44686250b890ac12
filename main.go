/*
Copyright © 2025 mk3s
*/
package main

import "hcrm/cmd"

func main() {
	cmd.Execute()
}
