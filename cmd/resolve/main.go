package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yungbote/prereqpath-backend/internal/app"
	"github.com/yungbote/prereqpath-backend/internal/modules/prereq"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitInvalid = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, app.New))
}

// run resolves one course and returns the process exit code. The app is
// closed before run returns on every path.
func run(args []string, stdout io.Writer, open func() (*app.App, error)) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var id, name string
	var pretty bool
	fs.StringVar(&id, "id", "", "target course id")
	fs.StringVar(&name, "name", "", "target course name (used when -id is empty)")
	fs.BoolVar(&pretty, "pretty", true, "indent JSON output")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if id == "" && name == "" {
		fmt.Fprintln(stdout, "one of -id or -name is required")
		return exitUsage
	}

	application, err := open()
	if err != nil {
		fmt.Fprintf(stdout, "init app: %v\n", err)
		return exitFailed
	}
	defer application.Close()

	ctx := context.Background()
	svc := application.Services.Path
	var out prereq.ResolvedPath
	if id != "" {
		out, err = svc.ResolvePrerequisitePath(ctx, id)
	} else {
		out, err = svc.ResolvePrerequisitePathByName(ctx, name)
	}
	if err != nil && !errors.Is(err, prereq.ErrCourseNotFound) {
		fmt.Fprintf(stdout, "resolve: %v\n", err)
		return exitFailed
	}

	enc := json.NewEncoder(stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stdout, "encode: %v\n", err)
		return exitFailed
	}
	if !out.Valid {
		return exitInvalid
	}
	return exitOK
}
