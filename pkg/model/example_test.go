package model_test

import (
	"fmt"

	"github.com/sketchdoc/sketchdoc/pkg/model"
)

func Example() {
	d := model.NewDiagram("Service Map")
	page := model.NewPage("Overview")
	d.AddPage(page)

	api := model.NewShape("api", model.ShapeKindRectangle)
	api.SetValue("API Gateway")
	api.SetPosition(model.Point{X: 40, Y: 40})
	api.SetSize(160, 80)

	db := model.NewShape("db", model.ShapeKindEllipse)
	db.SetValue("Postgres")
	db.SetPosition(model.Point{X: 320, Y: 40})
	db.SetSize(120, 80)

	link := model.NewConnector("api-db", "api", "db")

	for _, el := range []model.Element{api, db, link} {
		if err := page.AddElement(el); err != nil {
			fmt.Println(err)
			return
		}
	}

	fmt.Println(d.Name(), "/", page.Name())
	fmt.Println("elements:", len(page.Elements()))
	fmt.Println("edge:", link.SourceID(), "->", link.TargetID())
	// Output:
	// Service Map / Overview
	// elements: 3
	// edge: api -> db
}

func ExampleParseStyleString() {
	style := model.ParseStyleString("rounded;fillColor=#dae8fc;strokeColor=#6c8ebf")
	fmt.Println(style.String())
	// Output: rounded=1;fillColor=#dae8fc;strokeColor=#6c8ebf
}

func ExampleElement_observers() {
	shape := model.NewShape("node1", model.ShapeKindRectangle)
	shape.Subscribe(printObserver{})

	shape.SetValue("Cache")
	shape.SetValue("Cache") // unchanged values report nothing
	shape.SetPosition(model.Point{X: 100, Y: 50})

	// Output:
	// value_changed old="" new="Cache"
	// position_changed
}

type printObserver struct{}

func (printObserver) ModelChanged(entity any, kind model.ChangeKind, data model.Payload) {
	switch kind {
	case model.ValueChanged:
		fmt.Printf("%s old=%q new=%q\n", kind, data["old"], data["new"])
	default:
		fmt.Println(kind)
	}
}
