// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import "github.com/tliron/commonlog"

// log reports lifecycle transitions at debug level.
// Output is off unless the application configures a commonlog backend.
var log = commonlog.GetLogger("iobuf")
