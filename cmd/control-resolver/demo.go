package main

import (
	"fmt"

	"control-resolver/controls"
	"control-resolver/internal/binding"
	"control-resolver/internal/datacontext"
	"control-resolver/internal/tree"
)

type orderPage struct {
	Title  string
	Orders []*order
}

type order struct {
	Number string
	Total  float64
	Lines  int
}

// demoTree is a page whose repeater renders one item per order:
//
//	page (orderPage) > repeater ([]*order) > item[i] (*order) > panel > literal
type demoTree struct {
	page   *orderPage
	stacks map[string]*datacontext.Stack
	items  []*tree.Object
}

func newDemoTree() (*demoTree, error) {
	page := &orderPage{
		Title: "Orders",
		Orders: []*order{
			{Number: "A-1", Total: 120.5, Lines: 3},
			{Number: "A-2", Total: 42, Lines: 1},
			{Number: "B-7", Total: 9.99, Lines: 2},
		},
	}

	pageStack := datacontext.Root(page)
	root := tree.NewObject("page").SetDataContext(page, pageStack)

	ordersStack := datacontext.For[[]*order](pageStack)
	repeater := root.Add("repeater").SetDataContext(page.Orders, ordersStack)

	itemStack, err := binding.ChildDataContext(controls.RepeaterItemTemplateProperty, repeater)
	if err != nil {
		return nil, fmt.Errorf("failed to derive item context: %w", err)
	}

	d := &demoTree{
		page: page,
		stacks: map[string]*datacontext.Stack{
			"page":   pageStack,
			"orders": ordersStack,
			"order":  itemStack,
		},
	}

	for i, o := range page.Orders {
		item := repeater.Add(fmt.Sprintf("item[%d]", i)).
			SetDataContext(o, itemStack).
			SetExtensionValue(datacontext.IndexParameter.Name, i)
		item.Add("panel").Add("literal")

		d.items = append(d.items, item)
	}

	return d, nil
}

// literal returns the innermost node of the i-th item.
func (d *demoTree) literal(i int) (tree.Node, error) {
	if i < 0 || i >= len(d.items) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", i, len(d.items))
	}

	return d.items[i].Children()[0].Children()[0], nil
}
