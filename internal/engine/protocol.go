// Package engine implements the engine-instance control subsystem
// (C9): the little-endian pipe protocol spoken to an out-of-process
// engine child, an equivalent in-process direct-call implementation,
// and the shared EngineInstance interface both satisfy.
package engine

// Tag identifies a command on the wire (spec §4.9 command table). Both
// the out-of-process and in-process implementations recognize the same
// command set; only the out-of-process one frames it onto a pipe.
type Tag byte

const (
	TagStopProcess                 Tag = 0
	TagGetProperty                 Tag = 1
	TagLoadModules                 Tag = 2
	TagGetModuleStatus             Tag = 3
	TagGetModuleParamList          Tag = 4
	TagSetModuleParameter          Tag = 5
	TagActivateModule              Tag = 6
	TagEnableModule                Tag = 7
	TagSetDataDir                  Tag = 8
	TagSetCacheAppID               Tag = 9
	TagVFSAddDiskDir               Tag = 10
	TagVFSAddScriptSharedDataDir   Tag = 11
	TagVFSAddDelgaFile             Tag = 12
	TagSetCmdLineArgs              Tag = 13
	TagCreateRenderWindow          Tag = 14
	TagStartGame                   Tag = 15
	TagStopGame                    Tag = 16
	TagGetDisplayCurrentResolution Tag = 17
	TagGetDisplayResolutions       Tag = 18
	TagReadDelgaGameDefs           Tag = 19
	TagReadDelgaPatchDefs          Tag = 20
	TagReadDelgaFiles              Tag = 21
	TagSetPathOverlayCaptureConfig Tag = 22
)

// Status is the single-byte reply status code common to every command
// (spec §4.9).
type Status byte

const (
	StatusSuccess    Status = 0
	StatusFailed     Status = 1
	StatusGameExited Status = 2
)

// Property identifies one of the four queryable engine paths (spec §4.9
// command 1).
type Property byte

const (
	PropertyPathEngineConfig Property = iota
	PropertyPathEngineShare
	PropertyPathEngineLib
	PropertyPathEngineCache
)

// PathKind selects which overlay path set-path-overlay/capture/config
// targets (spec §4.9 command 22).
type PathKind byte

const (
	PathOverlay PathKind = iota
	PathCapture
	PathConfig
)
