/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package logger

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/CESSProject/cess-vfsse/configs"
	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Log(level string, msg string)
	Pnc(msg string)
	Insert(level string, msg string)
	Search(level string, msg string)
	Proof(level string, msg string)
	Del(level string, msg string)
}

// log stream names
const (
	LogStream    = "log"
	PanicStream  = "panic"
	InsertStream = "insert"
	SearchStream = "search"
	ProofStream  = "proof"
	DeleteStream = "delete"
)

var Streams = []string{LogStream, PanicStream, InsertStream, SearchStream, ProofStream, DeleteStream}

type logs struct {
	logpath map[string]string
	log     map[string]*zap.Logger
}

var _ Logger = (*logs)(nil)

func NewLogs(logfiles map[string]string) (Logger, error) {
	var (
		logpath = make(map[string]string, 0)
		logCli  = make(map[string]*zap.Logger)
	)
	for name, fpath := range logfiles {
		dir := getFilePath(fpath)
		_, err := os.Stat(dir)
		if err != nil {
			err = os.MkdirAll(dir, configs.DirMode)
			if err != nil {
				return nil, errors.Errorf("%v,%v", dir, err)
			}
		}
		Encoder := getEncoder()
		newCore := zapcore.NewTee(
			zapcore.NewCore(Encoder, getWriteSyncer(fpath), zap.NewAtomicLevel()),
		)
		logpath[name] = fpath
		logCli[name] = zap.New(newCore, zap.AddCaller())
		logCli[name].Sugar().Infof("%v", fpath)
	}
	return &logs{
		logpath: logpath,
		log:     logCli,
	}, nil
}

// NewStreams opens one log file per stream under dir.
func NewStreams(dir string) (Logger, error) {
	var logfiles = make(map[string]string, len(Streams))
	for _, v := range Streams {
		logfiles[v] = filepath.Join(dir, v+".log")
	}
	return NewLogs(logfiles)
}

func (l *logs) Log(level string, msg string) {
	l.write(LogStream, level, msg)
}

func (l *logs) Pnc(msg string) {
	l.write(PanicStream, "err", msg)
}

func (l *logs) Insert(level string, msg string) {
	l.write(InsertStream, level, msg)
}

func (l *logs) Search(level string, msg string) {
	l.write(SearchStream, level, msg)
}

func (l *logs) Proof(level string, msg string) {
	l.write(ProofStream, level, msg)
}

func (l *logs) Del(level string, msg string) {
	l.write(DeleteStream, level, msg)
}

func (l *logs) write(name, level, msg string) {
	_, file, line, _ := runtime.Caller(2)
	v, ok := l.log[name]
	if ok {
		switch level {
		case "info":
			v.Sugar().Infof("[%v:%d] %s", filepath.Base(file), line, msg)
		case "err":
			v.Sugar().Errorf("[%v:%d] %s", filepath.Base(file), line, msg)
		}
	}
}

func getFilePath(fpath string) string {
	path, _ := filepath.Abs(fpath)
	index := strings.LastIndex(path, string(os.PathSeparator))
	ret := path[:index]
	return ret
}

func getEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(
		zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller_line",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    cEncodeLevel,
			EncodeTime:     cEncodeTime,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   nil,
		})
}

func getWriteSyncer(fpath string) zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   fpath,
		MaxSize:    10,
		MaxBackups: 99,
		MaxAge:     180,
		LocalTime:  true,
		Compress:   true,
	}
	return zapcore.AddSync(lumberJackLogger)
}

func cEncodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

func cEncodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
}
