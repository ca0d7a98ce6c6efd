// Package script synthesizes Omni Automation (OmniJS) source text for
// execution inside OmniFocus.
//
// Every operation the bridge performs is a small JavaScript program that is
// evaluated by OmniFocus itself. This package provides the building blocks
// for assembling that program safely:
//
//   - Quote and friends render Go values as JavaScript literals. Quote is the
//     single sanitization chokepoint: any user-supplied string that ends up
//     inside a script must pass through it.
//   - Builder assembles the script body line by line with indentation.
//   - WrapJXA embeds a finished OmniJS body into the JXA harness that
//     osascript executes. The body travels through Quote a second time, so a
//     hostile value would have to escape two layers of string literals.
//   - RepetitionRule renders OmniFocus repetition rules as ICS RRULE strings
//     and as Task.RepetitionRule constructor calls.
//
// Scripts produced here always terminate in a JSON.stringify(...) expression
// so that osascript prints machine-readable output on stdout.
package script
