/*

Process of extraction

Source Text (file.rs) ->
	driver (mmir-rustc, analysis only) ->
Host Dump (json, host) ->
	decode ->
Host Unit (host.Unit, host.Context) ->
	translate ->
Portable MIR (mmir.Body) ->
	check, fingerprint ->
Output (json or yaml, validated against schema.json)

Recorded Host Dump ->
	collect.Dump ->
Host Unit ->
	...

*/
package compiler
