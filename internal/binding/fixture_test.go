package binding

import (
	"control-resolver/internal/datacontext"
	"control-resolver/internal/tree"
)

type pageVM struct {
	Title string
	Items []itemVM
}

type itemVM struct {
	Name string
}

type labelVM struct {
	Text string
}

type detailVM struct{}

// fixture is root(page) -> list -> item(page.Items[1]) -> w1 -> w2 -> w3 -> label(labelVM).
// Only root, item and label are context boundaries.
type fixture struct {
	page *pageVM

	root, list, item, w1, w2, w3, label *tree.Object

	rootStack, itemStack, labelStack *datacontext.Stack
}

func newFixture() *fixture {
	f := &fixture{
		page: &pageVM{Title: "Orders", Items: []itemVM{{Name: "first"}, {Name: "second"}}},
	}

	f.rootStack = datacontext.For[*pageVM](nil)
	f.itemStack = datacontext.For[itemVM](f.rootStack, datacontext.IndexParameter)
	f.labelStack = datacontext.For[labelVM](f.itemStack)

	f.root = tree.NewObject("root").SetDataContext(f.page, f.rootStack)
	f.list = f.root.Add("list")
	f.item = f.list.Add("item").
		SetDataContext(f.page.Items[1], f.itemStack).
		SetExtensionValue("_index", 1)
	f.w1 = f.item.Add("w1")
	f.w2 = f.w1.Add("w2")
	f.w3 = f.w2.Add("w3")
	f.label = f.w3.Add("label").SetDataContext(labelVM{Text: "hello"}, f.labelStack)

	return f
}
