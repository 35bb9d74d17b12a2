//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds both command line tools into ./bin.
func (Build) All() error {
	for _, name := range []string{"respack", "resget"} {
		if _, err := executeCmd("go", withArgs("build", "-o", "bin/"+name, "./cmd/"+name), withStream()); err != nil {
			return err
		}
	}
	return nil
}

type Test mg.Namespace

// Runs the unit tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
