package main

import "github.com/fiifikrampah/grmatl-netlify-sub000/cmd/server/cmd"

func main() {
	cmd.Execute()
}
