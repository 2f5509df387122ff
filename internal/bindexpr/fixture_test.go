package bindexpr

import (
	"errors"

	"control-resolver/internal/datacontext"
	"control-resolver/internal/tree"
)

type pageVM struct {
	Title string
	Items []itemVM
	Tags  map[string]string
}

type itemVM struct {
	Name  string
	Price int
}

func (i itemVM) Greet(who string) string {
	return "hello " + who + " from " + i.Name
}

func (i itemVM) Fail() (string, error) {
	return "", errors.New("boom")
}

type labelVM struct {
	Text string
}

type fixture struct {
	page *pageVM

	root, item, label *tree.Object

	rootStack, itemStack, labelStack *datacontext.Stack
}

// newFixture builds root(page) -> list -> item(Items[1], _index=1) -> wrapper -> label(labelVM).
func newFixture() *fixture {
	f := &fixture{
		page: &pageVM{
			Title: "Orders",
			Items: []itemVM{{Name: "first", Price: 3}, {Name: "second", Price: 5}},
			Tags:  map[string]string{"kind": "sales"},
		},
	}

	f.rootStack = datacontext.For[*pageVM](nil)
	f.itemStack = datacontext.For[itemVM](f.rootStack, datacontext.IndexParameter)
	f.labelStack = datacontext.For[*labelVM](f.itemStack)

	f.root = tree.NewObject("root").SetDataContext(f.page, f.rootStack)
	list := f.root.Add("list")
	f.item = list.Add("item").
		SetDataContext(f.page.Items[1], f.itemStack).
		SetExtensionValue(datacontext.IndexParameter.Name, 1)
	f.label = f.item.Add("wrapper").Add("label").SetDataContext(&labelVM{Text: "hi"}, f.labelStack)

	return f
}
