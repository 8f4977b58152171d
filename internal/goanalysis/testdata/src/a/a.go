package a

type Widget struct {
	Label string
}

type AbstractSingletonProxyFactoryBean struct{} // want "Class name is too long: AbstractSingletonProxyFactoryBean"

func handleEverythingNow() {} // want "handleEverythingNow is too long for a method name, shame on you"

func describe(item Widget) string {
	if item.Label == "" { // want "Found an if without an else"
		return "empty"
	}
	for false { // want "Infinite loop: for false"
	}
	switch item.Label { // want "Empty switch statement: switch item.Label"
	}
	ab := item.Label // want "Make your variable name more descriptive: ab"
	return ab
}

func bar() {}

func invoke() {
	bar() // want "bar is a bad identifier name" "bar is a bad identifier name"
}

func findWidget() *Widget {
	return nil
}
