//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Pack mg.Namespace

// Packs the resource root named by $RESPACK_ROOT (default ./assets) and lists the result.
func (Pack) Sample() error {
	mg.Deps(Build.All)

	root := os.Getenv("RESPACK_ROOT")
	if root == "" {
		root = "assets"
	}
	if _, err := executeCmd("bin/respack", withArgs("-report", root), withStream()); err != nil {
		return err
	}
	_, err := executeCmd("bin/resget", withArgs("-root", root, "list"), withStream())
	return err
}
