package diff

// Fixtures shared by the diff tests.
const (
	splitSameFileDiff = `diff --git a/src/a.rs b/src/a.rs
--- a/src/a.rs
+++ b/src/a.rs
@@ -1,2 +1,3 @@ fn main
 fn main() {
+    println!("hi");
 }
diff --git a/src/a.rs b/src/a.rs
--- a/src/a.rs
+++ b/src/a.rs
@@ -10,4 +11,2 @@
 let a = 1;
-let b = 2;
-let c = 3;
 let d = 4;
`

	binaryDiff = `diff --git a/img/logo.png b/img/logo.png
index 1234567..89abcde 100644
Binary files a/img/logo.png and b/img/logo.png differ
`

	miscountedDiff = `diff --git a/x.go b/x.go
--- a/x.go
+++ b/x.go
@@ -1,3 +1,3 @@
-a
+b
`

	renameDiff = `diff --git a/old/name.go b/new/name.go
similarity index 90%
rename from old/name.go
rename to new/name.go
--- a/old/name.go
+++ b/new/name.go
@@ -1,1 +1,1 @@
-package old
+package name
`

	newFileDiff = `diff --git a/docs/NOTES.md b/docs/NOTES.md
new file mode 100644
--- /dev/null
+++ b/docs/NOTES.md
@@ -0,0 +1,2 @@
+# Notes
+first
`

	noEOLDiff = `diff --git a/VERSION b/VERSION
--- a/VERSION
+++ b/VERSION
@@ -1 +1 @@
-1.0
\ No newline at end of file
+1.1
\ No newline at end of file
`

	patchEmail = `Hi all,

This fixes the off-by-one in the parser.

Signed-off-by: Ada <ada@example.org>
---
 src/a.rs | 1 +
 1 file changed, 1 insertion(+)

diff --git a/src/a.rs b/src/a.rs
--- a/src/a.rs
+++ b/src/a.rs
@@ -1,2 +1,3 @@
 fn main() {
+    println!("hi");
 }
-- 
2.43.0
`
)
