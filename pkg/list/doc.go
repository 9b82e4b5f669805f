/*
Package list builds paginated message menus.

A list menu fetches its entries once per interaction through a Listable,
keeps them in the render cache and stores only the current page in its
state. The first row carries the first, back, page, next and last controls;
a "page" effect clamps every change and re-slices the visible window.

	lists := list.NewManager(menus)
	menu, err := list.CreateMenu(lists, "fruits", list.Static[string](&list.SourceListable{
		Source: store,
		Key:    "fruits",
	}))
*/
package list
