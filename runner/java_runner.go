package runner

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/errdefs"
	"github.com/mensylisir/pmmlkit/executor"
	"github.com/mensylisir/pmmlkit/logger"
	"github.com/mensylisir/pmmlkit/util"
)

var versionPattern = regexp.MustCompile(`(?m)^(.*)\sversion\s"(.*)"(|\s\d{4}-\d{2}-\d{2})$`)

// javaRunner implements Runner over a local java executable.
type javaRunner struct {
	home     string
	encoding string
	exec     executor.Executor
}

// NewJavaRunner returns a Runner for the java executable under home, or the
// one on PATH when home is empty. encoding is used to decode the version
// probe output.
func NewJavaRunner(home, encoding string, exec executor.Executor) Runner {
	if exec == nil {
		exec = executor.NewLocalExecutor()
	}
	return &javaRunner{
		home:     home,
		encoding: util.FirstNonEmpty(encoding, common.DefaultEncoding),
		exec:     exec,
	}
}

// JavaExecutable resolves the java executable for home. A home that already
// points at a bin directory is used as is.
func JavaExecutable(home string) string {
	if home == "" {
		return "java"
	}
	if filepath.Base(filepath.Clean(home)) == "bin" {
		return filepath.Join(home, "java")
	}
	return filepath.Join(home, "bin", "java")
}

func (r *javaRunner) Command(classpath string, mainClass string, args ...string) []string {
	command := []string{JavaExecutable(r.home), common.ClasspathFlag, classpath, mainClass}
	return append(command, args...)
}

// loggedCommand renders command for the log, shortened to
// common.MaxLoggedValueLength.
func loggedCommand(command []string) string {
	return util.TruncateString(strings.Join(command, " "), common.MaxLoggedValueLength, "...")
}

func (r *javaRunner) Run(ctx context.Context, dir string, command []string) (*executor.Result, error) {
	if len(command) == 0 {
		return nil, errors.New("empty command")
	}
	logger.Log.WithField(common.StepName, "invoke").Debugf("Executing command: %s", loggedCommand(command))
	res, err := r.exec.Execute(ctx, dir, command[0], command[1:]...)
	if err != nil {
		var launchErr *executor.LaunchError
		if errors.As(err, &launchErr) {
			return nil, &errdefs.RuntimeUnavailableError{Command: command, Err: launchErr.Err}
		}
		return nil, errors.Wrapf(err, "failed to run %s", command[0])
	}
	return res, nil
}

func (r *javaRunner) Version(ctx context.Context) RuntimeVersion {
	java := JavaExecutable(r.home)
	res, err := r.exec.Execute(ctx, "", java, common.VersionFlag)
	if err != nil {
		logger.Log.WithField(common.StepName, "version").Debugf("Runtime probe failed: %v", err)
		return Unknown
	}
	return ParseVersion(util.Decode(res.Stderr, r.encoding))
}

// ParseVersion extracts the runtime name and version from the output of
// `java -version`. The first matching line wins.
func ParseVersion(output string) RuntimeVersion {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return Unknown
	}
	return RuntimeVersion{Name: match[1], Version: match[2]}
}
