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
	"testing"

	"github.com/opentracing/basictracer-go"
	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/require"
)

func TestChildSpanFromContext(t *testing.T) {
	var recorded []basictracer.RawSpan
	root := NewRecordingSpan("root", func(sp basictracer.RawSpan) {
		recorded = append(recorded, sp)
	})
	ctx := opentracing.ContextWithSpan(context.Background(), root)

	child := ChildSpanFromContext(ctx, "child")
	child.Finish()
	root.Finish()

	require.Len(t, recorded, 2)
	require.Equal(t, "child", recorded[0].Operation)
	require.Equal(t, "root", recorded[1].Operation)
	require.Equal(t, recorded[1].Context.SpanID, recorded[0].ParentSpanID)
}

func TestChildSpanFromEmptyContext(t *testing.T) {
	sp := ChildSpanFromContext(context.Background(), "child")
	require.NotNil(t, sp)
	sp.Finish()
}

func TestNoopSpanFromContext(t *testing.T) {
	sp := SpanFromContext(context.Background())
	require.NotNil(t, sp)

	ctx := opentracing.ContextWithSpan(context.Background(), NoopSpan())
	require.NotNil(t, SpanFromContext(ctx))

	// A noop parent yields a noop child.
	child := ChildSpanFromContext(ctx, "child")
	_, isNoop := child.Tracer().(opentracing.NoopTracer)
	require.True(t, isNoop)
}
