// Package converter turns a canonical pipeline into a PMML document by
// dumping it and running the external converter application on the dump.
package converter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mensylisir/pmmlkit/classpath"
	"github.com/mensylisir/pmmlkit/common"
	"github.com/mensylisir/pmmlkit/errdefs"
	"github.com/mensylisir/pmmlkit/estimator"
	"github.com/mensylisir/pmmlkit/file"
	"github.com/mensylisir/pmmlkit/hook"
	"github.com/mensylisir/pmmlkit/logger"
	"github.com/mensylisir/pmmlkit/pipeline"
	"github.com/mensylisir/pmmlkit/serializer"
	"github.com/mensylisir/pmmlkit/util"
	"github.com/mensylisir/pmmlkit/version"
)

type conversion struct {
	opts Options
	cp   classpath.Classpath
	log  *logrus.Entry
	out  io.Writer
}

func newConversion(opts Options) *conversion {
	opts = opts.withDefaults()
	return &conversion{
		opts: opts,
		cp:   classpath.Assemble(opts.PackageClasspath, opts.UserClasspath),
		log:  logger.Log.Conversion(uuid.NewString()),
		out:  opts.Out,
	}
}

// Convert writes the PMML document for obj to dest.
//
// obj must be a *pipeline.PMMLPipeline, as built by rewrite.MakePMMLPipeline.
// With WithRepr set, obj.Repr is overwritten with the pipeline's text form
// before the dump, and an estimator exporting an embedded model gets its
// model path set; both changes remain visible to the caller.
//
// Every transient file is removed before Convert returns, on every path,
// unless Debug is set, in which case the files are kept and listed in
// Result.Preserved. A non-zero exit yields *errdefs.ConversionFailedError; a
// java executable that cannot be started yields
// *errdefs.RuntimeUnavailableError.
func Convert(obj estimator.Component, dest string, opts Options) (*Result, error) {
	p, ok := obj.(*pipeline.PMMLPipeline)
	if !ok || p == nil {
		return nil, errors.Wrapf(errdefs.ErrInvalidInput,
			"the pipeline object is a %T, not a *pipeline.PMMLPipeline; use rewrite.MakePMMLPipeline to translate a regular estimator or pipeline", obj)
	}
	c := newConversion(opts)
	ctx := context.Background()
	if c.opts.Debug {
		c.preamble(ctx)
	}

	set := file.NewTransientSet(c.opts.WorkDir)
	res := &Result{}
	succeeded := false
	err := hook.Call(hook.Funcs{
		TryFunc: func() error {
			if err := c.prepare(p, set); err != nil {
				return err
			}
			dump, err := serializer.DumpFile(set, p)
			if err != nil {
				return err
			}
			c.log.WithField(common.StepName, "dump").Debugf("Pipeline dumped to %s", dump)
			if err := c.invoke(ctx, dump, dest, res); err != nil {
				return err
			}
			succeeded = true
			return nil
		},
		FinallyFunc: func() error {
			preserved, err := set.Release(c.opts.Debug)
			if c.opts.Debug {
				res.Preserved = preserved
				fmt.Fprintf(c.out, "Preserved dump file(s): %s\n", strings.Join(preserved, " "))
			}
			if err != nil && !succeeded {
				c.log.WithField(common.StepName, "cleanup").Warnf("Failed to remove transient files: %v", err)
				return nil
			}
			return err
		},
	})
	return res, err
}

// ConvertDump runs the converter on an existing dump. Nothing is created or
// removed; the dump stays where it is.
func ConvertDump(dump, dest string, opts Options) (*Result, error) {
	c := newConversion(opts)
	ctx := context.Background()
	if c.opts.Debug {
		c.preamble(ctx)
	}
	res := &Result{}
	return res, c.invoke(ctx, dump, dest, res)
}

func (c *conversion) preamble(ctx context.Context) {
	for _, component := range version.Components() {
		fmt.Fprintln(c.out, component)
	}
	fmt.Fprintln(c.out, c.opts.Runner.Version(ctx))
}

// prepare applies the pre-dump mutations: the repr snapshot and the export
// of an embedded model, which is registered with set for cleanup.
func (c *conversion) prepare(p *pipeline.PMMLPipeline, set *file.TransientSet) error {
	if c.opts.WithRepr {
		p.Repr = pipeline.Repr(p)
	}
	downloader := modelDownloader(p.FinalEstimator())
	if downloader == nil {
		return nil
	}
	path, err := downloader.DownloadModel(set.Dir())
	if path != "" {
		set.Add(path)
	}
	if err != nil {
		return errors.Wrap(err, "failed to export the embedded model")
	}
	downloader.SetModelPath(path)
	c.log.WithField(common.StepName, "model").Debugf("Embedded model exported to %s", path)
	return nil
}

func modelDownloader(c estimator.Component) estimator.ModelDownloader {
	if md, ok := c.(estimator.ModelDownloader); ok {
		return md
	}
	if w, ok := c.(interface{ Unwrap() estimator.Component }); ok {
		if md, ok := w.Unwrap().(estimator.ModelDownloader); ok {
			return md
		}
	}
	return nil
}

func (c *conversion) invoke(ctx context.Context, dump, dest string, res *Result) error {
	command := c.opts.Runner.Command(c.cp.String(), common.ConverterMainClass,
		common.PipelineInputFlag, dump, common.PMMLOutputFlag, dest)
	res.Command = command
	if c.opts.Debug {
		fmt.Fprintf(c.out, "Executing command:\n%s\n", strings.Join(command, " "))
	}

	start := time.Now()
	out, err := c.opts.Runner.Run(ctx, "", command)
	if err != nil {
		return err
	}
	res.ExitCode = out.ExitCode
	res.Stdout = util.Decode(out.Stdout, c.opts.Encoding)
	res.Stderr = util.Decode(out.Stderr, c.opts.Encoding)
	c.log.WithField(common.StepName, "invoke").Debugf("Converter exited with code %d after %s", out.ExitCode, util.ShortDuration(time.Since(start)))

	if c.opts.Debug || out.ExitCode != 0 {
		reportStream(c.out, "output", out.Stdout, res.Stdout)
		reportStream(c.out, "error", out.Stderr, res.Stderr)
	}
	if out.ExitCode != 0 {
		return &errdefs.ConversionFailedError{
			Command:  command,
			ExitCode: out.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return nil
}

func reportStream(w io.Writer, name string, raw []byte, content string) {
	if len(raw) == 0 {
		fmt.Fprintf(w, "Standard %s is empty\n", name)
		return
	}
	fmt.Fprintf(w, "Standard %s:\n%s\n", name, content)
}
