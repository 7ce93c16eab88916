package entities

import (
	"fmt"
	"strings"
)

// By is a locator strategy for finding elements in the DOM.
type By string

const (
	ByID        By = "id"
	ByName      By = "name"
	ByClassName By = "class name"
	ByCSS       By = "css selector"
	ByLinkText  By = "link text"
	ByXPath     By = "xpath"
)

// Locator identifies how to find a single element: a strategy plus its value.
type Locator struct {
	By    By     `json:"by"`
	Value string `json:"value"`
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%q", l.By, l.Value)
}

// ID locates by the id attribute.
func ID(value string) Locator { return Locator{By: ByID, Value: value} }

// Name locates by the name attribute.
func Name(value string) Locator { return Locator{By: ByName, Value: value} }

// ClassName locates by a single CSS class.
func ClassName(value string) Locator { return Locator{By: ByClassName, Value: value} }

// CSS locates by an arbitrary CSS selector.
func CSS(value string) Locator { return Locator{By: ByCSS, Value: value} }

// LinkText locates an anchor by its exact visible text.
func LinkText(value string) Locator { return Locator{By: ByLinkText, Value: value} }

// XPath locates by an XPath expression.
func XPath(value string) Locator { return Locator{By: ByXPath, Value: value} }

// LocatorSet is an ordered list of equivalent locators for one logical target.
// Resolution tries candidates in declared order; markup on some deployments
// uses an id, on others a name attribute or a text match, so most interactive
// targets carry at least one fallback.
type LocatorSet []Locator

// Target builds a LocatorSet from a primary locator and optional fallbacks.
func Target(primary Locator, fallbacks ...Locator) LocatorSet {
	return append(LocatorSet{primary}, fallbacks...)
}

func (s LocatorSet) String() string {
	parts := make([]string, len(s))
	for i, l := range s {
		parts[i] = l.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Condition is the kind of element state a wait resolves on.
type Condition string

const (
	ConditionPresent      Condition = "present"
	ConditionVisible      Condition = "visible"
	ConditionClickable    Condition = "clickable"
	ConditionTextContains Condition = "text-contains"
	ConditionInvisible    Condition = "invisible"
)
