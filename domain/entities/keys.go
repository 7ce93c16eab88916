package entities

// KeyEnter is the WebDriver key code for Enter. Drivers that do not speak
// WebDriver key codes translate it to their native press action.
const KeyEnter = ""
