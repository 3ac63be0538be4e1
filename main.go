package main

import (
	_ "git.teamcore.network/tcn/tcn/src/migration"
	"git.teamcore.network/tcn/tcn/src/website"
)

func main() {
	website.WebsiteCommand.Execute()
}
