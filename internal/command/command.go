// Package command lists the rclone subcommands this wrapper knows by name.
//
// The table documents commands and backs the CLI's help output. It is not
// a whitelist: names outside the table are still forwarded to rclone,
// which reports unknown commands itself.
package command

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Name is an rclone subcommand. Multi-word names ("config create") are
// split into separate argv tokens when marshaled.
type Name string

// String returns the string representation of the command name.
func (n Name) String() string {
	return string(n)
}

// Streaming commands write raw bytes meant for direct consumption and run
// with the parent's stdio instead of pipes.
const (
	Cat Name = "cat"
)

// Commonly used commands.
const (
	Copy        Name = "copy"
	Sync        Name = "sync"
	Move        Name = "move"
	Lsjson      Name = "lsjson"
	Version     Name = "version"
	SelfUpdate  Name = "selfupdate"
	ListRemotes Name = "listremotes"
	Delete      Name = "delete"
	Mkdir       Name = "mkdir"
	Purge       Name = "purge"
	Size        Name = "size"
	Obscure     Name = "obscure"
	Rcat        Name = "rcat"
	Check       Name = "check"
	Copyto      Name = "copyto"
	Moveto      Name = "moveto"
	Lsf         Name = "lsf"
	Touch       Name = "touch"
	Hashsum     Name = "hashsum"
	DeleteFile  Name = "deletefile"
	Rmdir       Name = "rmdir"
	Rmdirs      Name = "rmdirs"
	Cleanup     Name = "cleanup"
	About       Name = "about"
	Link        Name = "link"
	Tree        Name = "tree"
	Dedupe      Name = "dedupe"
	Copyurl     Name = "copyurl"
	Settier     Name = "settier"
	Md5sum      Name = "md5sum"
	Sha1sum     Name = "sha1sum"
	Lsd         Name = "lsd"
	Ls          Name = "ls"
	Lsl         Name = "lsl"
	Mount       Name = "mount"
	Serve       Name = "serve"
	Rc          Name = "rc"
	Rcd         Name = "rcd"
	Config      Name = "config"
	Backend     Name = "backend"
	Authorize   Name = "authorize"
)

// Entry is a documented command.
type Entry struct {
	Name        Name
	Description string
}

// Table lists the known rclone commands in display order.
var Table = []Entry{
	{About, "Get quota information from the remote."},
	{Authorize, "Remote authorization."},
	{Backend, "Run a backend specific command."},
	{Cat, "Concatenates any files and sends them to stdout."},
	{Check, "Checks the files in the source and destination match."},
	{Cleanup, "Clean up the remote if possible."},
	{Config, "Enter an interactive configuration session."},
	{"config create", "Create a new remote with name, type and options."},
	{"config delete", "Delete an existing remote name."},
	{"config disconnect", "Disconnects user from remote."},
	{"config dump", "Dump the config file as JSON."},
	{"config edit", "Enter an interactive configuration session."},
	{"config file", "Show path of configuration file in use."},
	{"config password", "Update password in an existing remote."},
	{"config providers", "List in JSON format all the providers and options."},
	{"config reconnect", "Re-authenticates user with remote."},
	{"config show", "Print (decrypted) config file, or the config for a single remote."},
	{"config update", "Update options in an existing remote."},
	{"config userinfo", "Prints info about logged in user of remote."},
	{Copy, "Copy files from source to dest, skipping already copied."},
	{Copyto, "Copy files from source to dest, skipping already copied."},
	{Copyurl, "Copy url content to dest."},
	{"cryptcheck", "Cryptcheck checks the integrity of a crypted remote."},
	{"cryptdecode", "Cryptdecode returns unencrypted file names."},
	{Dedupe, "Interactively find duplicate filenames and delete/rename them."},
	{Delete, "Remove the contents of path."},
	{DeleteFile, "Remove a single file from remote."},
	{"genautocomplete", "Output completion script for a given shell."},
	{"gendocs", "Output markdown docs for rclone to the directory supplied."},
	{Hashsum, "Produces a hashsum file for all the objects in the path."},
	{Link, "Generate public link to file/folder."},
	{ListRemotes, "List all the remotes in the config file."},
	{Ls, "List the objects in the path with size and path."},
	{Lsd, "List all directories/containers/buckets in the path."},
	{Lsf, "List directories and objects in remote:path formatted for parsing."},
	{Lsjson, "List directories and objects in the path in JSON format."},
	{Lsl, "List the objects in path with modification time, size and path."},
	{Md5sum, "Produces an md5sum file for all the objects in the path."},
	{Mkdir, "Make the path if it doesn't already exist."},
	{Mount, "Mount the remote as file system on a mountpoint."},
	{Move, "Move files from source to dest."},
	{Moveto, "Move file or directory from source to dest."},
	{"ncdu", "Explore a remote with a text based user interface."},
	{Obscure, "Obscure password for use in the rclone config file."},
	{Purge, "Remove the path and all of its contents."},
	{Rc, "Run a command against a running rclone."},
	{Rcat, "Copies standard input to file on remote."},
	{Rcd, "Run rclone listening to remote control commands only."},
	{Rmdir, "Remove the path if empty."},
	{Rmdirs, "Remove empty directories under the path."},
	{SelfUpdate, "Update the rclone binary (rclone's own updater)."},
	{Serve, "Serve a remote over a protocol."},
	{Settier, "Changes storage class/tier of objects in remote."},
	{Sha1sum, "Produces an sha1sum file for all the objects in the path."},
	{Size, "Prints the total size and number of objects in remote:path."},
	{Sync, "Make source and dest identical, modifying destination only."},
	{Touch, "Create new file or change file modification time."},
	{Tree, "List the contents of the remote in a tree like fashion."},
	{Version, "Show the version number."},
}

// Lookup returns the description of a known command.
func Lookup(name string) (string, bool) {
	for _, e := range Table {
		if string(e.Name) == name {
			return e.Description, true
		}
	}
	return "", false
}

// IsStreaming reports whether the command runs with inherited stdio.
func IsStreaming(name string) bool {
	return Name(name) == Cat
}

// Fprint writes the table as aligned columns.
func Fprint(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range Table {
		if _, err := fmt.Fprintf(tw, "  %s\t%s\n", e.Name, e.Description); err != nil {
			return err
		}
	}
	return tw.Flush()
}
