package main

import "github.com/ThatOtherAndrew/Aetherfield/cmd"

func main() {
	cmd.Execute()
}
