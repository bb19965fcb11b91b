// Package view renders form documents as HTML. Components are plain
// templ.Components so they can be sent as datastar element patches; every
// patchable part carries a stable id derived from the form.
package view
