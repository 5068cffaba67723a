package recommend

import (
	"strings"
	"testing"

	"github.com/Muhi2007/eshopping-ai/internal/pkg/common"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name string
		link string
		want Category
	}{
		{name: "shirt lowercase", link: "https://shop.example.com/blue-shirt", want: CategoryShirt},
		{name: "shirt uppercase", link: "https://shop.example.com/BLUE-SHIRT", want: CategoryShirt},
		{name: "shirt mixed case", link: "https://shop.example.com/Blue-ShIrT-slim", want: CategoryShirt},
		{name: "dress", link: "https://shop.example.com/summer-dress", want: CategoryDress},
		{name: "dress uppercase", link: "https://shop.example.com/SUMMER-Dress", want: CategoryDress},
		{name: "shoe", link: "https://shop.example.com/running-shoe", want: CategoryShoe},
		{name: "shoe uppercase", link: "https://shop.example.com/RUNNING-SHOE", want: CategoryShoe},
		{name: "no keyword falls back", link: "https://shop.example.com/leather-belt", want: CategoryClothingItem},
		{name: "shirt wins over dress", link: "https://shop.example.com/dress-shirt", want: CategoryShirt},
		{name: "shirt wins over shoe", link: "https://shop.example.com/shoe-and-shirt-combo", want: CategoryShirt},
		{name: "dress wins over shoe", link: "https://shop.example.com/dress-shoes", want: CategoryDress},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := InferCategory(tt.link); got != tt.want {
				t.Fatalf("InferCategory(%q) = %q, want %q", tt.link, got, tt.want)
			}
		})
	}
}

func TestNewRequestComplementaryCategory(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{name: "shirt", link: "https://shop.example.com/shirt", want: "trousers or skirts"},
		{name: "dress", link: "https://shop.example.com/dress", want: "jackets or accessories"},
		{name: "shoe", link: "https://shop.example.com/shoe", want: "socks or shoe care products"},
		{name: "default", link: "https://shop.example.com/belt", want: "matching outfits or accessories"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.link, 3)
			if err != nil {
				t.Fatalf("NewRequest(%q) returned error: %v", tt.link, err)
			}
			if req.ComplementaryCategory != tt.want {
				t.Fatalf("ComplementaryCategory = %q, want %q", req.ComplementaryCategory, tt.want)
			}
		})
	}
}

func TestNewRequestRejectsBlankLink(t *testing.T) {
	for _, link := range []string{"", "   ", "\t\n "} {
		req, err := NewRequest(link, 3)
		if req != nil {
			t.Fatalf("NewRequest(%q) returned a request, want nil", link)
		}
		if err == nil {
			t.Fatalf("NewRequest(%q) returned no error", link)
		}
		if !common.IsValidationError(err) {
			t.Fatalf("NewRequest(%q) error = %T, want validation error", link, err)
		}
		if err.Error() != "Please enter a product link." {
			t.Fatalf("NewRequest(%q) error message = %q", link, err.Error())
		}
	}
}

func TestInstructionEmbedsRequestFields(t *testing.T) {
	req, err := NewRequest("https://shop.example.com/blue-shirt", 7)
	if err != nil {
		t.Fatalf("NewRequest returned error: %v", err)
	}

	instruction := req.Instruction()
	for _, want := range []string{
		"https://shop.example.com/blue-shirt",
		"shirt",
		"exactly 7",
		"trousers or skirts",
		`"name", "price", "review", "link"`,
	} {
		if !strings.Contains(instruction, want) {
			t.Fatalf("instruction missing %q:\n%s", want, instruction)
		}
	}
}

func TestResponseSchemaShape(t *testing.T) {
	schema := ResponseSchema()

	if schema.Type != "ARRAY" {
		t.Fatalf("schema type = %q, want ARRAY", schema.Type)
	}
	if schema.Items == nil || schema.Items.Type != "OBJECT" {
		t.Fatalf("schema items must be OBJECT, got %+v", schema.Items)
	}

	wantOrder := []string{"name", "price", "review", "link"}
	if len(schema.Items.PropertyOrdering) != len(wantOrder) {
		t.Fatalf("propertyOrdering = %v, want %v", schema.Items.PropertyOrdering, wantOrder)
	}
	for i, field := range wantOrder {
		if schema.Items.PropertyOrdering[i] != field {
			t.Fatalf("propertyOrdering[%d] = %q, want %q", i, schema.Items.PropertyOrdering[i], field)
		}
		prop, ok := schema.Items.Properties[field]
		if !ok {
			t.Fatalf("schema missing property %q", field)
		}
		if prop.Type != "STRING" {
			t.Fatalf("property %q type = %q, want STRING", field, prop.Type)
		}
	}
}
