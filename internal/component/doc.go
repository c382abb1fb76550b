// Package component renders optimized icon markup into UI component source.
//
// Templates are Go text/template files with YAML frontmatter:
//
//	---
//	name: svelte
//	description: Svelte component with an exported size prop
//	ext: svelte
//	---
//	<script lang="ts">
//	  {{.Banner}}
//	  export let size: string = "{{.DefaultSize}}";
//	</script>
//	...
//
// Load resolves a name in order:
//  1. a path to a template file, when the name has a path separator or a
//     .tmpl suffix
//  2. a built-in template (svelte, svelte5) embedded in the binary
package component
