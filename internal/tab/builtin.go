package tab

import (
	"context"
	"fmt"

	"bought-tab/internal/model"
)

// Keys and priorities of the tabs every product page carries.
const (
	DescriptionKey         = "description"
	DescriptionPriority    = 10
	AdditionalInfoKey      = "additional_information"
	AdditionalInfoPriority = 20
)

// DescriptionTab renders the product summary.
type DescriptionTab struct{}

func (DescriptionTab) Name() string { return DescriptionKey }

func (DescriptionTab) Filter(_ context.Context, tc TabContext, tabs model.TabList) model.TabList {
	if tabs == nil {
		tabs = model.TabList{}
	}
	name := tc.Product.Name
	tabs[DescriptionKey] = model.Tab{
		Title:    "Description",
		Priority: DescriptionPriority,
		Render: func(context.Context) (string, error) {
			return name, nil
		},
	}
	return tabs
}

// AdditionalInfoTab renders catalogue attributes.
type AdditionalInfoTab struct{}

func (AdditionalInfoTab) Name() string { return AdditionalInfoKey }

func (AdditionalInfoTab) Filter(_ context.Context, tc TabContext, tabs model.TabList) model.TabList {
	if tabs == nil {
		tabs = model.TabList{}
	}
	product := tc.Product
	tabs[AdditionalInfoKey] = model.Tab{
		Title:    "Additional information",
		Priority: AdditionalInfoPriority,
		Render: func(context.Context) (string, error) {
			return fmt.Sprintf("Category: %s\nPrice: %.2f", product.Category, product.Price), nil
		},
	}
	return tabs
}
