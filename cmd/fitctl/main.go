package main

import "github.com/vladimiradmaev/fitness-helper/internal/cli"

func main() {
	cli.Execute()
}
