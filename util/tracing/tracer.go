// Copyright 2025 The trino-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"

	"github.com/opentracing/basictracer-go"
	"github.com/opentracing/opentracing-go"
)

// A CallbackRecorder immediately invokes itself on received trace spans.
type CallbackRecorder func(sp basictracer.RawSpan)

// RecordSpan implements basictracer.SpanRecorder.
func (cr CallbackRecorder) RecordSpan(sp basictracer.RawSpan) {
	cr(sp)
}

// NewRecordingSpan returns a root span which records finished spans directly
// via the specified callback.
func NewRecordingSpan(opName string, callback func(sp basictracer.RawSpan)) opentracing.Span {
	tr := basictracer.New(CallbackRecorder(callback))
	return tr.StartSpan(opName)
}

// NoopSpan returns a span which discards all operations.
func NoopSpan() opentracing.Span {
	return (opentracing.NoopTracer{}).StartSpan("DefaultSpan")
}

// SpanFromContext returns the span obtained from the context or, if none is
// found, a noop span.
func SpanFromContext(ctx context.Context) (sp opentracing.Span) {
	if sp = opentracing.SpanFromContext(ctx); sp == nil {
		return NoopSpan()
	}
	return sp
}

// ChildSpanFromContext returns a non-nil span. If a span can be got from ctx,
// the returned span is a child of it. Otherwise a noop span is returned.
func ChildSpanFromContext(ctx context.Context, opName string) (sp opentracing.Span) {
	if sp := opentracing.SpanFromContext(ctx); sp != nil {
		if _, ok := sp.Tracer().(opentracing.NoopTracer); !ok {
			return sp.Tracer().StartSpan(opName, opentracing.ChildOf(sp.Context()))
		}
	}
	return NoopSpan()
}
