package commands

// manuals holds the DESCRIPTION section of each manual page.
var manuals = map[string]string{
	"pwd": `Print the absolute path of the current working directory.`,
	"cd": `Change the working directory to DIRECTORY, or to your home directory
when none is given. "~" expands to your home, ".." to the parent.
You need execute (x) permission on every directory along the way.`,
	"ls": `List the entries of each PATH, or of the current directory.
  -l   long format: permissions, owner, group, size, date, name
  -a   include hidden entries whose names start with "."
Listing a directory needs read (r) and execute (x) permission.`,
	"cat": `Print the contents of each FILE. Without FILE, print standard input.`,
	"echo": `Print the arguments separated by single spaces.
Use "echo text > file" to write a file and ">>" to append.`,
	"touch": `Create each FILE empty if it does not exist, otherwise set its
modification time to now.`,
	"mkdir": `Create each DIRECTORY.
  -p   create missing parents and ignore existing directories`,
	"rm": `Remove each PATH.
  -r   remove directories and their contents recursively
  -f   ignore missing files`,
	"rmdir": `Remove each empty DIRECTORY.`,
	"mv": `Rename SOURCE to DESTINATION, or move SOURCE into DESTINATION when it
is a directory. A directory cannot be moved into itself.`,
	"cp": `Copy SOURCE to DESTINATION.
  -r   copy directories recursively`,
	"chmod": `Change the permission bits of each PATH.
MODE is octal (755, 0644) or symbolic: [ugoa][+-=][rwx], clauses
separated by commas, for example u+x, go-w, a=r.
Only the owner or root may change permissions.
  -R   apply to directory contents recursively`,
	"chown": `Change the owner and/or group of each PATH.
The first operand is OWNER, OWNER:GROUP, OWNER: or :GROUP.
  -R   apply to directory contents recursively`,
	"nano": `nano - edit files in a simplified mode.
Opens FILE in the editor panel. Type the new content, then:
  /save   write the buffer to FILE (ctrl+s in termquest play)
  /exit   close the editor without saving (ctrl+x in termquest play)`,
	"file": `Guess the type of each PATH from its contents.`,
	"whoami": `Print the name of the current user.`,
	"id": `Print the user name, primary group and group list of USER, or of the
current user.`,
	"groups": `Print the groups USER belongs to, or those of the current user.`,
	"sudo": `Run COMMAND with root privileges, then return to your own user.
Destructive commands such as "rm -rf /" are blocked.`,
	"useradd": `Create the account NAME with a home directory under /home.
  -G a,b   supplemental groups
Requires root; use sudo.`,
	"usermod": `Change the supplemental groups of NAME.
  -G a,b   the new group list
  -a       append to the existing groups instead of replacing them
Requires root; use sudo.`,
	"userdel": `Delete the account NAME.
  -r   also remove its home directory
Requires root; use sudo.`,
	"find": `Search the tree below PATH (default ".") and print matching paths.
  -name PATTERN    base name matches the glob PATTERN
  -iname PATTERN   like -name, ignoring case
  -type f|d        files or directories only
  -mtime N         modified N days ago (+N more than, -N less than)
  -mmin N          modified N minutes ago (+N more than, -N less than)
Directories you cannot read are skipped.`,
	"grep": `Print lines matching the regular expression PATTERN.
  -i   ignore case
  -v   print non-matching lines
  -n   prefix line numbers
  -c   print only a count of matching lines
  -r   search directories recursively
Without PATH, grep reads standard input.`,
	"head": `Print the first 10 lines of each FILE or of standard input.
  -n N   print the first N lines instead`,
	"tail": `Print the last 10 lines of each FILE or of standard input.
  -n N   print the last N lines instead`,
	"wc": `Print line, word and byte counts.
  -l   lines only
  -w   words only
  -c   bytes only`,
	"less": `Show FILE or standard input for reading.`,
	"history": `List the commands entered in this session, oldest first.`,
	"clear": `Clear the terminal screen.`,
	"help": `List every available command with a short description.`,
	"man": `Show the manual page of COMMAND.`,
	"whatis": `whatis - display one-line manual page descriptions.
Print the one-line summary of each COMMAND.`,
	"apropos": `apropos - search command descriptions by keyword.
Print every command whose name, description or keywords match KEYWORD.`,
}
