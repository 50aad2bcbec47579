package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/infrastructure/config"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	p, err := Setup(context.Background(), config.TracingConfig{})

	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_InstallsGlobalProvider(t *testing.T) {
	p, err := Setup(context.Background(), config.TracingConfig{
		Endpoint:    "http://127.0.0.1:4318",
		ServiceName: "tabdock-test",
		Insecure:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, p.TracerProvider(), otel.GetTracerProvider())

	// nothing was recorded, so shutdown does not touch the network
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestInstall_RecordsDockMoveSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	p := Install(sdktrace.WithSyncer(exporter), "")
	defer p.Shutdown(context.Background())

	layout := entity.NewLayoutData(&entity.Box{ID: "root", Mode: entity.ModeHorizontal, Children: []entity.Child{
		&entity.Panel{ID: "a", Size: 100, ActiveID: "t1", Tabs: []*entity.Tab{{ID: "t1"}, {ID: "t2"}}},
		&entity.Panel{ID: "b", Size: 100, ActiveID: "t3", Tabs: []*entity.Tab{{ID: "t3"}}},
	}}, nil, nil, nil)
	uc, err := usecase.NewDockLayoutUseCase(context.Background(), nil, nil, usecase.DockLayoutConfig{DefaultLayout: layout})
	require.NoError(t, err)

	require.True(t, uc.DockMove(context.Background(), usecase.MoveInput{
		Source:    uc.Find("t2", entity.FilterAll),
		Target:    uc.Find("b", entity.FilterAll),
		Direction: entity.DropMiddle,
	}))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "DockLayout.DockMove", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, attribute.String("dock.source", "t2"))
	assert.Contains(t, spans[0].Attributes, attribute.Bool("dock.changed", true))
}
