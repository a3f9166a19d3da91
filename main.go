package main

import "github.com/iksnae/webscraper-chat/cmd"

func main() {
	cmd.Execute()
}
