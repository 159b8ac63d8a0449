// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	MissingMainPackId Id = iota + 1
	PackOpenFailedId
	InvalidMagicId
	InvalidFormatVersionId
	CorruptPackId
	NoCompatibleVersionId
	LaunchFailedId
	ConfigLoadFailedId
)

type (
	Id int

	MarkdownMsg string

	// Issue is a catalog entry with markdown guidance for one failure kind.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the guidance with a glamour style ("auto", "dark",
// "light", "notty", ...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// RenderError renders the catalog guidance for err followed by its
// suggestions. Errors without an issue render only their suggestions.
func RenderError(err *ActionableError, stylePath string) (string, error) {
	var md strings.Builder
	if iss := Get(err.Issue); iss != nil {
		md.WriteString(string(iss.mdMsg))
	}
	if len(err.Suggestions) > 0 {
		md.WriteString("\n\n## Things you can try:\n")
		for _, s := range err.Suggestions {
			md.WriteString("- ")
			md.WriteString(s)
			md.WriteString("\n")
		}
	}
	if md.Len() == 0 {
		return "", nil
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	missingMainPackIssue = &Issue{
		id: MissingMainPackId,
		mdMsg: `
# No main pack was given!

The forwarder must be started with ` + "`--main-pack <path>`" + ` so it can
read which engine build the game needs.

## Things you can try:
- Launch the game through its forwarder entry, which passes the pack path
- Run it by hand:
~~~
godot-forwarder --main-pack /switch/mygame/game.pck
~~~`,
	}

	packOpenFailedIssue = &Issue{
		id: PackOpenFailedId,
		mdMsg: `
# Failed to open PCK!

The file named by ` + "`--main-pack`" + ` could not be opened.

## Things you can try:
- Check that the path is correct and the file is on the SD card
- Check that the file is readable`,
	}

	invalidMagicIssue = &Issue{
		id: InvalidMagicId,
		mdMsg: `
# Invalid PCK magic!

The main pack does not start with the ` + "`GDPC`" + ` signature, so it is not a
Godot pack, or it is a pack embedded in an executable.

## Things you can try:
- Re-export the project with "Export PCK/ZIP" and choose the .pck format
- Make sure ` + "`--main-pack`" + ` points at the .pck, not at an .nro`,
	}

	invalidFormatVersionIssue = &Issue{
		id: InvalidFormatVersionId,
		mdMsg: `
# Invalid PCK format!

Only pack format version 1 (Godot 3.x and early 4.x exports) is supported.

## Things you can try:
- Export the project with an engine version that writes format 1 packs`,
	}

	corruptPackIssue = &Issue{
		id: CorruptPackId,
		mdMsg: `
# Corrupt PCK!

The pack header or file table points past the end of the file, or the
` + "`custom_editor_id`" + ` entry is not a usable build name.

## Things you can try:
- Copy the pack to the SD card again; the copy may be incomplete
- Re-export the project`,
	}

	noCompatibleVersionIssue = &Issue{
		id: NoCompatibleVersionId,
		mdMsg: `
# No compatible Godot runtime!

Runtimes are looked up next to the forwarder, newest patch first, and never
newer than the version that exported the game:

1. ` + "`godot-<major>.<minor>.<patch>.nro`" + `
2. ` + "`godot-<major>.<minor>.<patch-1>.nro`" + ` down to patch 1
3. ` + "`godot-<major>.<minor>.nro`" + `

A pack with a ` + "`custom_editor_id`" + ` entry needs exactly ` + "`godot-<id>.nro`" + `.`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch the runtime!

A matching runtime was found but could not be started.

## Things you can try:
- Check that the runtime file is a valid executable for this system
- Check that the runtime file is not corrupt; copy it to the SD card again`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Could not load the forwarder configuration!

## Things you can try:
- Fix the reported field in ` + "`config.cue`" + `
- Remove the file to fall back to defaults

## Example:
~~~cue
search_dir: "/switch/godot"
ack_key: "+"
log_level: "info"
~~~`,
	}

	issues = map[Id]*Issue{
		missingMainPackIssue.Id():      missingMainPackIssue,
		packOpenFailedIssue.Id():       packOpenFailedIssue,
		invalidMagicIssue.Id():         invalidMagicIssue,
		invalidFormatVersionIssue.Id(): invalidFormatVersionIssue,
		corruptPackIssue.Id():          corruptPackIssue,
		noCompatibleVersionIssue.Id():  noCompatibleVersionIssue,
		launchFailedIssue.Id():         launchFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

// Ids returns every catalog id in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}

func Get(id Id) *Issue {
	return issues[id]
}
