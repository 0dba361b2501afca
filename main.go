package main

import "github.com/theirongolddev/loandash/cmd"

func main() {
	cmd.Execute()
}
