// Package identity models the closed user and permission world of the
// simulated machine.
//
// Components:
//   - Mode: nine permission bits arranged as owner, group and other triads
//   - Directory: users, groups and derived group membership
//   - Subject: the acting user with its effective group set
//   - Access decisions: pure functions over a subject and node ownership
//   - Elevation policy: commands refused under sudo regardless of subject
//
// Mode Grammar:
//   - Octal: "644", "0755"
//   - Symbolic: comma list of <who><op><perm>*, who in {u,g,o,a},
//     op in {+,-,=}, perm in {r,w,x}
//
// Example Usage:
//
//	dir := identity.NewDirectory()
//	dir.AddGroup("security")
//	dir.AddUser(identity.User{Name: "analyst", Supplemental: []string{"security"}})
//	subj, _ := dir.Subject("analyst")
//	ok := identity.CanRead(subj, identity.Ownership{Owner: "root", Group: "security", Mode: 0o640})
package identity
