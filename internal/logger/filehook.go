// Copyright 2018-present the CoreDHCP Authors. All rights reserved
// This source code is licensed under the MIT license found in the
// LICENSE file in the root directory of this source tree.

package logger

import (
	"io"

	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// newFileHook builds an lfshook.Hook that duplicates every level's output
// to w, formatted with a plain logrus.TextFormatter with full timestamps
// (not the console sink's prefixed formatter), which is enough for a plain
// append-only file sink.
func newFileHook(w io.Writer) logrus.Hook {
	writers := lfshook.WriterMap{
		logrus.TraceLevel: w,
		logrus.PanicLevel: w,
		logrus.FatalLevel: w,
		logrus.ErrorLevel: w,
		logrus.WarnLevel:  w,
		logrus.InfoLevel:  w,
		logrus.DebugLevel: w,
	}
	return lfshook.NewHook(writers, &logrus.TextFormatter{FullTimestamp: true})
}
