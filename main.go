package main

import (
	"os"

	"github.com/motorsure/motorsure-api/actions"
	"github.com/motorsure/motorsure-api/domain"
	"github.com/motorsure/motorsure-api/job"
	"github.com/motorsure/motorsure-api/listeners"
	"github.com/motorsure/motorsure-api/log"
)

// GitCommitHash is set by the build, it identifies the running release
var GitCommitHash string

// main is the starting point for your Buffalo application.
// You can feel free and add to this `main` method, change
// what it does, etc...
// All we ask is that, at some point, you make sure to
// call `app.Serve()`, unless you don't want to start your
// application that is. :)
func main() {
	if hook := log.NewSentryHook(domain.Env.GoEnv, GitCommitHash); hook != nil {
		log.AddHook(hook)
	}

	listeners.RegisterListeners()

	app := actions.App()

	job.Init(&app.Worker)

	if err := app.Serve(); err != nil {
		if err.Error() != "context canceled" {
			log.Fatal(err)
		}
		os.Exit(0)
	}
}

/*
# Notes about `main.go`

## SSL Support

We recommend placing your application behind a proxy, such as
Apache or Nginx and letting them do the SSL heavy lifting
for you. https://gobuffalo.io/en/docs/proxy

## Buffalo Build

When `buffalo build` is run to compile your binary, this `main`
function will be at the heart of that binary. It is expected
that your `main` function will start your application using
the `app.Serve()` method.

*/
