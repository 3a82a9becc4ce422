package service_test

import (
	"context"
	"testing"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/api-svc/internal/mocks"
	"bistro-booking/api-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMenuService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     *domain.MenuItem
		mockError error
		wantField string
		wantErr   bool
	}{
		{name: "valid item", input: &domain.MenuItem{Category: "Soups", Title: "Borscht", Image: "b.png", Price: 6.5}},
		{name: "database error", input: &domain.MenuItem{Category: "Soups", Title: "Borscht", Image: "b.png", Price: 6.5}, mockError: assert.AnError, wantErr: true},
		{name: "price below one", input: &domain.MenuItem{Category: "Soups", Title: "Borscht", Image: "b.png", Price: 0.5}, wantField: "price", wantErr: true},
		{name: "missing title", input: &domain.MenuItem{Category: "Soups", Image: "b.png", Price: 2}, wantField: "title", wantErr: true},
		{name: "missing image", input: &domain.MenuItem{Category: "Soups", Title: "Borscht", Price: 2}, wantField: "image", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewMenuRepository(t)
			svc := service.NewMenuService(repo)
			if testCase.wantField == "" {
				repo.On("CreateMenuItem", mock.Anything, testCase.input).Return(testCase.mockError).Once()
			}

			err := svc.Create(context.Background(), testCase.input)

			if !testCase.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			if testCase.wantField != "" {
				var validation domain.ValidationError
				if assert.ErrorAs(t, err, &validation) {
					assert.Equal(t, testCase.wantField, validation.Field)
				}
			}
		})
	}
}

func TestMenuService_ListNeverNil(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("ListMenuItems", mock.Anything).Return(nil, nil).Once()

	items, err := service.NewMenuService(repo).List(context.Background())

	assert.NoError(t, err)
	assert.NotNil(t, items)
}

func TestMenuService_DeleteMissing(t *testing.T) {
	repo := mocks.NewMenuRepository(t)
	repo.On("DeleteMenuItem", mock.Anything, 3).Return(domain.ErrMenuItemNotFound).Once()

	err := service.NewMenuService(repo).Delete(context.Background(), 3)

	assert.ErrorIs(t, err, domain.ErrMenuItemNotFound)
}
