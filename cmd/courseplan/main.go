package main

import "github.com/CS-UT/course-plan-sub000/internal/cli"

func main() {
	cli.Execute()
}
