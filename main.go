package main

import "github.com/yanghuadong-Mobile-Researcher/android-studio-poet/cmd"

func main() {
	cmd.Execute()
}
