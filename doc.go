// Package willowxr is a real-time hierarchical transform engine for
// hand-tracked interaction: a scene of props built from boxes that two
// controllers can grab, move, turn and strike.
//
// # Quick start
//
// Build props under [Scene.Root] and feed one [FrameInput] per frame to
// [Scene.Update]:
//
//	scene := willowxr.NewScene()
//	stand := scene.Root().Add("stand")
//	stand.Add("pole").SetLocalTransform(willowxr.Scale(willowxr.Vec3{0.02, 1, 0.02}))
//
//	for {
//		scene.Update(device.Sample())
//	}
//
// For a desktop window driven from the keyboard, use [Run]:
//
//	willowxr.Run(scene, willowxr.RunConfig{
//		Title: "Drums", Width: 800, Height: 600,
//	})
//
// # Scene graph
//
// Every element is a [Node] holding a local affine [Mat4]. A node's world
// transform is its parent's world transform composed with its own local
// transform. Direct children of the root are props; manipulation always
// moves a whole prop. Leaves are the only nodes with geometry: each is the
// unit cube [-0.5,0.5]^3 under its world transform.
//
//	drum := scene.Root().Add("tom")
//	drum.Move(0, 0.8, -0.4)
//	shell := drum.Add("shell")
//	shell.ScaleXYZ(0.3, 0.2, 0.3)
//
// # Hit testing
//
// [FindHit] walks the tree depth first and reports the first leaf whose
// box contains the origin of a query frame. An [ExcludeSet] skips leaves
// whose parent is listed, which is how implements are kept from hitting
// themselves.
//
// # Manipulation
//
// The right controller drives a [Session]. Holding the move trigger grabs
// the prop under the controller and drags it with the controller's
// displacement. Holding the rotate trigger turns it using one of the
// [RotationPolicy] values. Button indices come from the configured
// [Profile].
//
// # Play mode
//
// In play mode both hands hold an [Implement]. Each frame an implement's
// tip touches a leaf, the leaf's [AudioSink] plays and [Scene.OnStrike]
// handlers fire. [LoadSound] decodes Ogg Vorbis data into a [Sound] sink
// backed by Ebitengine audio.
//
// # Configuration
//
// [DefaultConfig] carries the built-in calibration and geometry.
// [LoadConfig] overlays a TOML document and [ConfigFromEnv] overlays
// WILLOWXR_* environment variables.
//
// # Testing
//
// [Scene.InjectFrame], [Scene.InjectSweep] and [Scene.InjectTurn] queue
// synthetic input. [LoadTestScript] sequences whole interactions from JSON.
//
// Tweens (via [gween]) slide props with [TweenPosition], and interaction
// events reach an ECS through [EntityStore] (see the willowxr/ecs
// [Donburi] adapter).
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package willowxr
