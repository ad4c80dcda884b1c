package service

import (
	"context"
	"testing"

	"bought-tab/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTabBuilder is a mock implementation of TabBuilder.
type MockTabBuilder struct {
	mock.Mock
}

func (m *MockTabBuilder) Build(ctx context.Context, product model.Product, viewer model.Viewer) []model.RenderedTab {
	args := m.Called(ctx, product, viewer)
	return args.Get(0).([]model.RenderedTab)
}

func TestTabService_ProductTabs(t *testing.T) {
	ctx := context.Background()
	bonusGuide := &model.Product{ID: "42", Name: "Bonus guide"}
	viewer := model.Viewer{CustomerID: "V"}
	rendered := []model.RenderedTab{
		{Key: "description", Title: "Description", Priority: 10, Content: "Bonus guide", Managed: true},
		{Key: "bought_product_tab", Title: "Extra info", Priority: 30, Content: "secret"},
	}

	repo := new(MockProductRepository)
	repo.On("GetByID", ctx, "42").Return(bonusGuide, nil)
	builder := new(MockTabBuilder)
	builder.On("Build", ctx, *bonusGuide, viewer).Return(rendered)

	svc := NewTabService(NewProductService(repo, zerolog.Nop()), builder, zerolog.Nop())
	tabs, err := svc.ProductTabs(ctx, "42", viewer)

	require.NoError(t, err)
	assert.Equal(t, rendered, tabs)
	builder.AssertExpectations(t)
}

func TestTabService_UnknownProduct(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	repo.On("GetByID", ctx, "999").Return(nil, nil)
	builder := new(MockTabBuilder)

	svc := NewTabService(NewProductService(repo, zerolog.Nop()), builder, zerolog.Nop())
	_, err := svc.ProductTabs(ctx, "999", model.AnonymousViewer)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	builder.AssertNotCalled(t, "Build", mock.Anything, mock.Anything, mock.Anything)
}
