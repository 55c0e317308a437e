// Command neo drives the neobrowser state: history, bookmarks, downloads,
// settings and the internal pages.
package main

import "github.com/mateconpizza/neo/cmd"

func main() {
	cmd.Execute()
}
