package main

import "github.com/baibanqin/xjtlu-ebridge-html-to-ics/cmd"

func main() {
	cmd.Execute()
}
