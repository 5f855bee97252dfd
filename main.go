package main

import "github.com/Manu343726/rspcompdb/cmd"

func main() {
	cmd.Execute()
}
