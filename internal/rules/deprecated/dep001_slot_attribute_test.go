package deprecated

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/rules/ruletest"
)

const slotMessage = "`slot` attributes are deprecated."

func slotError(line, column, endColumn int) ruletest.Error {
	return ruletest.Error{
		Message:   slotMessage,
		MessageID: "forbiddenSlotAttribute",
		Line:      line,
		Column:    column,
		EndLine:   line,
		EndColumn: endColumn,
	}
}

const ignoredChildren = `<template>
      <LinkList>
        <one slot="one" />
        <two slot="two" />
        <my-component slot="my-component-slot" />
        <myComponent slot="myComponent-slot" />
        <MyComponent slot="MyComponent-slot" />
      </LinkList>
    </template>`

const oneTwo = `
      <template>
        <my-component>
          <one slot="one">
            A
          </one>
          <two slot="two">
            B
          </two>
        </my-component>
      </template>`

const oneTwoFixed = `
      <template>
        <my-component>
          <one slot="one">
            A
          </one>
          <template v-slot:two>
<two >
            B
          </two>
</template>
        </my-component>
      </template>`

const twoParents = `
      <template>
        <my-component>
          <one slot="one">
            A
          </one>
        </my-component>
        <my-component2>
          <two slot="two">
            B
          </two>
        </my-component2>
      </template>`

const twoParentsFixed = `
      <template>
        <my-component>
          <one slot="one">
            A
          </one>
        </my-component>
        <my-component2>
          <template v-slot:two>
<two >
            B
          </two>
</template>
        </my-component2>
      </template>`

// linkList wraps one line of slot content the way most cases are written
func linkList(content string) string {
	return `
      <template>
        <LinkList>
          ` + content + `
        </LinkList>
      </template>`
}

func options(name string, patterns ...string) map[string]interface{} {
	return map[string]interface{}{name: patterns}
}

func TestDEP001SlotAttribute(t *testing.T) {
	rule := NewDEP001()

	valid := []ruletest.Case{
		{Code: `<template>
      <LinkList>
        <template v-slot:name><a /></template>
      </LinkList>
    </template>`},
		{Code: `<template>
      <LinkList>
        <template #name><a /></template>
      </LinkList>
    </template>`},
		{Code: `<template>
      <LinkList>
        <template v-slot="{a}"><a /></template>
      </LinkList>
    </template>`},
		{Code: `<template>
      <LinkList v-slot="{a}">
        <a />
      </LinkList>
    </template>`},
		{Code: `<template>
      <LinkList>
        <template #default="{a}"><a /></template>
      </LinkList>
    </template>`},
		{Code: `<template>
      <LinkList>
        <template><a /></template>
      </LinkList>
    </template>`},
		{Code: `<template>
      <LinkList>
        <a />
      </LinkList>
    </template>`},
		{Name: "ignore names", Code: ignoredChildren, Options: options("ignore", "one", "two", "my-component")},
		{Name: "ignore patterns", Code: ignoredChildren, Options: options("ignore", "/one/", "/^Two$/i", "/^my-.*/i")},
		{Name: "ignore parents", Code: ignoredChildren, Options: options("ignoreParents", "LinkList")},
		{Name: "ignore parent patterns", Code: ignoredChildren, Options: options("ignoreParents", "/^Link/")},
		{Name: "dynamic slot argument is another binding", Code: linkList(`<a :[slot]="x" />`)},
		{Name: "non-html template is skipped", Code: `<template lang="pug">
  <LinkList><a slot="x" /></LinkList>
</template>`},
	}

	invalid := []ruletest.Case{
		{
			Name:   "valueless",
			Code:   linkList(`<template slot ><a /></template>`),
			Output: linkList(`<template v-slot ><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Name:   "named",
			Code:   linkList(`<template slot="name" ><a /></template>`),
			Output: linkList(`<template v-slot:name ><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Name:   "slot-scope moves into v-slot",
			Code:   linkList(`<template slot="name" unknown slot-scope="{a}" ><a /></template>`),
			Output: linkList(`<template v-slot:name="{a}" unknown  ><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Name:   "scope on template",
			Code:   linkList(`<template slot="name" scope="{a}"><a /></template>`),
			Output: linkList(`<template v-slot:name="{a}" ><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Name:   "camel case name",
			Code:   linkList(`<template slot="nameFoo"><a /></template>`),
			Output: linkList(`<template v-slot:nameFoo><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Name: "names that cannot be an argument",
			Code: `
      <template>
        <LinkList>
          <template slot="f o o" ><a /></template>
          <template slot="obj.prop" ><a /></template>
          <template slot="a/b" ><a /></template>
          <template slot="a=b" ><a /></template>
          <template slot="a>b" ><a /></template>
        </LinkList>
      </template>`,
			Errors: []ruletest.Error{
				slotError(4, 21, 25),
				slotError(5, 21, 25),
				slotError(6, 21, 25),
				slotError(7, 21, 25),
				slotError(8, 21, 25),
			},
		},
		{
			Name:   "v-bind:slot unquoted",
			Code:   linkList(`<template v-bind:slot=name><a /></template>`),
			Output: linkList(`<template v-slot:[name]><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 32)},
		},
		{
			Name:   "member expression",
			Code:   linkList(`<template :slot="slot.name"><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 26)},
		},
		{
			Name:   "padded identifier",
			Code:   linkList(`<template :slot="  slotName  "><a /></template>`),
			Output: linkList(`<template v-slot:[slotName]><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 26)},
		},
		{
			Code:   linkList(`<template :slot="slot. name"><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 26)},
		},
		{
			Code:   linkList(`<template :slot="a>b?c:d"><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 26)},
		},
		{
			Name:   "blank expression",
			Code:   linkList(`<template :slot="  "><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 26)},
		},
		{
			Name:   "invalid expression",
			Code:   linkList(`<template :slot="  .error  "><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 26)},
		},
		{
			Name:   "valueless binding",
			Code:   linkList(`<template :slot><a /></template>`),
			Output: linkList(`<template v-slot:[slot]><a /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 26)},
		},
		{
			Name:   "element is wrapped",
			Code:   linkList(`<a slot="name" />`),
			Output: linkList("<template v-slot:name>\n<a  />\n</template>"),
			Errors: []ruletest.Error{slotError(4, 14, 18)},
		},
		{
			Name:   "element with binding is wrapped",
			Code:   linkList(`<a :slot="name" />`),
			Output: linkList("<template v-slot:[name]>\n<a  />\n</template>"),
			Errors: []ruletest.Error{slotError(4, 14, 19)},
		},
		{
			Name:   "slot-scope on a wrapped element",
			Code:   linkList(`<a slot="x" slot-scope="{ y }">{{ y }}</a>`),
			Output: linkList("<template v-slot:x=\"{ y }\">\n<a  >{{ y }}</a>\n</template>"),
			Errors: []ruletest.Error{slotError(4, 14, 18)},
		},
		{
			Name:   "scope is only honored on template",
			Code:   linkList(`<a slot="x" scope="y" />`),
			Output: linkList("<template v-slot:x>\n<a  scope=\"y\" />\n</template>"),
			Errors: []ruletest.Error{slotError(4, 14, 18)},
		},
		{
			Code: `
      <template>
        <MyComponent>
          <template slot="foo-bar">
            <a/>
          </template>
        </MyComponent>
      </template>`,
			Output: `
      <template>
        <MyComponent>
          <template v-slot:foo-bar>
            <a/>
          </template>
        </MyComponent>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Code: `
      <template>
        <MyComponent>
          <template slot="foo_bar">
            <a/>
          </template>
        </MyComponent>
      </template>`,
			Output: `
      <template>
        <MyComponent>
          <template v-slot:foo_bar>
            <a/>
          </template>
        </MyComponent>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Code: `
      <template>
        <MyComponent>
          <template slot="123">
            <a/>
          </template>
        </MyComponent>
      </template>`,
			Output: `
      <template>
        <MyComponent>
          <template v-slot:123>
            <a/>
          </template>
        </MyComponent>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 21, 25)},
		},
		{
			Name: "same name under different parents",
			Code: `
      <template>
        <some-component>
          <template slot="some-slot">
            This works 1
          </template>

          <template v-if="true"> <!-- some arbitrary conditional -->
            <template slot="some-slot">
              This works 2
            </template>
          </template>
        </some-component>
      </template>`,
			Output: `
      <template>
        <some-component>
          <template v-slot:some-slot>
            This works 1
          </template>

          <template v-if="true"> <!-- some arbitrary conditional -->
            <template slot="some-slot">
              This works 2
            </template>
          </template>
        </some-component>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 21, 25), slotError(9, 23, 27)},
		},
		{
			Name: "static name with v-for",
			Code: `
      <template>
        <my-component>
          <template v-for="x in xs" slot="one">
            A
          </template>
          <template v-for="x in xs" :slot="x">
            B
          </template>
        </my-component>
      </template>`,
			Output: `
      <template>
        <my-component>
          <template v-for="x in xs" slot="one">
            A
          </template>
          <template v-for="x in xs" v-slot:[x]>
            B
          </template>
        </my-component>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 37, 41), slotError(7, 37, 42)},
		},
		{
			Name:   "template that already declares v-slot",
			Code:   linkList(`<template v-slot:foo slot="x"><i/></template>`),
			Errors: []ruletest.Error{slotError(4, 32, 36)},
		},
		{
			Name:   "element that already declares a slot shorthand",
			Code:   linkList(`<a #foo slot="x" />`),
			Errors: []ruletest.Error{slotError(4, 19, 23)},
		},
		{
			Name: "unclosed element is not wrapped",
			Code: `<template>
  <LinkList>
    <a slot="x">text
  </LinkList>
</template>`,
			Errors: []ruletest.Error{slotError(3, 8, 12)},
		},
		{
			Name:   "valueless and explicit default name the same slot",
			Code:   linkList(`<a slot>A</a><b slot="default">B</b>`),
			Errors: []ruletest.Error{slotError(4, 14, 18), slotError(4, 27, 31)},
		},
		{
			Name:   "empty and valueless name the same slot",
			Code:   linkList(`<template slot=""><a /></template><template slot><b /></template>`),
			Errors: []ruletest.Error{slotError(4, 21, 25), slotError(4, 55, 59)},
		},
		{
			Name: "duplicate static names",
			Code: `
      <template>
        <my-component>
          <template slot="one">
            A
          </template>
          <template slot="one">
            B
          </template>
        </my-component>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 21, 25), slotError(7, 21, 25)},
		},
		{
			Name: "duplicate names in one conditional chain",
			Code: `
      <template>
        <my-component>
          <template v-if="c" slot="one">
            A
          </template>
          <template v-else slot="one">
            B
          </template>
        </my-component>
      </template>`,
			Output: `
      <template>
        <my-component>
          <template v-if="c" v-slot:one>
            A
          </template>
          <template v-else v-slot:one>
            B
          </template>
        </my-component>
      </template>`,
			Errors: []ruletest.Error{{Message: slotMessage}, {Message: slotMessage}},
		},
		{
			Name: "separate chains conflict",
			Code: `
      <template>
        <my-component>
          <template v-if="c" slot="one">A</template>
          <template v-if="d" slot="one">B</template>
        </my-component>
      </template>`,
			Errors: []ruletest.Error{{Line: 4}, {Line: 5}},
		},
		{
			Name: "duplicate dynamic names over one iterable",
			Code: `
      <template>
        <my-component>
          <template v-for="x in xs" :slot="x">
            A
          </template>
          <template v-for="x in xs" :slot="x">
            B
          </template>
        </my-component>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 37, 42), slotError(7, 37, 42)},
		},
		{
			Name: "dynamic names over different iterables",
			Code: `
      <template>
        <my-component>
          <template v-for="x in ys" :slot="x">
            A
          </template>
          <template v-for="x in xs" :slot="x">
            B
          </template>
        </my-component>
      </template>`,
			Output: `
      <template>
        <my-component>
          <template v-for="x in ys" v-slot:[x]>
            A
          </template>
          <template v-for="x in xs" v-slot:[x]>
            B
          </template>
        </my-component>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 37, 42), slotError(7, 37, 42)},
		},
		{
			Name: "expression names are not fixed",
			Code: `
      <template>
        <my-component>
          <template v-for="(x,y) in xs" :slot="x+y">
            A
          </template>
          <template v-for="x in xs" :slot="x">
            B
          </template>
        </my-component>
      </template>`,
			Output: `
      <template>
        <my-component>
          <template v-for="(x,y) in xs" :slot="x+y">
            A
          </template>
          <template v-for="x in xs" v-slot:[x]>
            B
          </template>
        </my-component>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 41, 46), slotError(7, 37, 42)},
		},
		{
			Name:    "ignore name",
			Code:    oneTwo,
			Output:  oneTwoFixed,
			Options: options("ignore", "one"),
			Errors:  []ruletest.Error{slotError(7, 16, 20)},
		},
		{
			Name:    "ignore pattern",
			Code:    oneTwo,
			Output:  oneTwoFixed,
			Options: options("ignore", "/one/"),
			Errors:  []ruletest.Error{slotError(7, 16, 20)},
		},
		{
			Name:    "ignore anchored pattern",
			Code:    oneTwo,
			Output:  oneTwoFixed,
			Options: options("ignore", "/^one$/"),
			Errors:  []ruletest.Error{slotError(7, 16, 20)},
		},
		{
			Name:    "ignore parent name",
			Code:    twoParents,
			Output:  twoParentsFixed,
			Options: options("ignoreParents", "my-component"),
			Errors:  []ruletest.Error{slotError(9, 16, 20)},
		},
		{
			Name:    "ignore parent pattern",
			Code:    twoParents,
			Output:  twoParentsFixed,
			Options: options("ignoreParents", "/component$/"),
			Errors:  []ruletest.Error{slotError(9, 16, 20)},
		},
		{
			Name: "v-for moves to the wrapper",
			Code: `
      <template>
        <my-component>
          <slot
            v-for="slot in Object.keys($slots)"
            :slot="slot"
            :name="slot"
          ></slot>
        </my-component>
      </template>`,
			Output: "\n      <template>\n        <my-component>\n" +
				"          <template v-for=\"slot in Object.keys($slots)\" v-slot:[slot]>\n" +
				"<slot\n            \n            \n            :name=\"slot\"\n          ></slot>\n" +
				"</template>\n        </my-component>\n      </template>",
			Errors: []ruletest.Error{slotError(6, 13, 18)},
		},
		{
			Name: "parent is not a component",
			Code: `
      <template>
        <component :is="toggle ? 'my-component' : 'div'">
          <div slot="named">
            Passing in a named slot to a div worked with old syntax
            But not with new syntax
          </div>
        </component>
      </template>`,
			Errors: []ruletest.Error{slotError(4, 16, 20)},
		},
		{
			Name:   "plain html parent",
			Code:   "<ul><li slot=\"a\"></li></ul>",
			Errors: []ruletest.Error{slotError(1, 9, 13)},
		},
	}

	ruletest.Run(t, rule, valid, invalid)
}

func TestDEP001InvalidPatterns(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]interface{}
		option  string
	}{
		{"bad regex", options("ignore", "/(/"), "ignore"},
		{"bad flag", options("ignoreParents", "/a/x"), "ignoreParents"},
		{"not a list", map[string]interface{}{"ignore": map[string]int{"a": 1}}, "ignore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyzer.New(
				analyzer.WithRules(NewDEP001()),
				analyzer.WithRuleConfig("DEP001", tt.options),
			)
			require.Error(t, err)

			var ce *analyzer.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "DEP001", ce.RuleID)
			assert.Equal(t, tt.option, ce.Option)
		})
	}
}

func TestDEP001IsRegistered(t *testing.T) {
	found := false
	for _, r := range All() {
		if r.ID() == "DEP001" {
			found = true
			assert.Equal(t, "no-deprecated-slot-attribute", r.Name())
			assert.Equal(t, analyzer.SeverityError, r.Severity())
		}
	}
	assert.True(t, found)
}
