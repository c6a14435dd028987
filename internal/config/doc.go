// Package config reads, edits, and writes qibuild.xml, the build-tool
// configuration shared by the qibuild tools.
//
// A Store keeps the parsed XML tree and edits it in place, so elements and
// attributes it does not know about survive a load/save cycle. Only the
// elements a mutator touches are created or rewritten.
//
// # File Format
//
//	<qibuild>
//	  <build build_dir="..." sdk_dir="..." incredibuild="true|false"/>
//	  <defaults config="..." ide="...">
//	    <env path="..."/>
//	    <cmake generator="..."/>
//	  </defaults>
//	  <ide name="..." path="..."/>
//	  <config name="..." ide="...">
//	    <cmake generator="..."/>
//	    <env path="..." bat_file="..."/>
//	  </config>
//	</qibuild>
//
// Any root element name is accepted. Missing elements and attributes read
// as "" (or false for incredibuild, which is true only for "true" and "1").
//
// # Named Entries
//
// IDEs and build configurations are keyed by their name attribute.
// AddIDE and AddConfig update the entry of the same name in place instead of
// appending a duplicate. The maps returned by IDEs and Configs are copies.
//
// # Usage
//
//	store, err := config.Load("qibuild.xml")
//	if err != nil {
//	    return err
//	}
//	store.SetBuildDir("/path/to/build")
//	err = store.AddIDE(config.IDE{Name: "QtCreator", Path: "/usr/bin/qtcreator"})
//	...
//	err = store.Save("qibuild.xml")
//
// Update wraps the load/edit/save cycle in a file lock:
//
//	err := config.Update(ctx, "qibuild.xml", func(s *config.Store) error {
//	    s.SetIncredibuild(true)
//	    return nil
//	})
//
// # Thread Safety
//
// Store operations are NOT thread-safe. Callers must serialize access.
package config
